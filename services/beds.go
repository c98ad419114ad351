package services

import (
	"booking-clone-server/models"
	"fmt"
	"strings"
)

// BedsList summarizes an apartment's beds for listings.
// Zero beds: "". One bed type: "2 Single beds". Several types:
// "5 beds (3 Single beds, 2 Large double beds)", groups listed in the order
// their type was first encountered.
func BedsList(beds []models.Bed) string {
	var typeOrder []string
	counts := map[string]int{}
	for _, bed := range beds {
		name := ""
		if bed.BedType != nil {
			name = bed.BedType.Name
		}
		if _, seen := counts[name]; !seen {
			typeOrder = append(typeOrder, name)
		}
		counts[name]++
	}

	switch len(typeOrder) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%d %s", len(beds), pluralize(typeOrder[0], len(beds)))
	}

	parts := make([]string, 0, len(typeOrder))
	for _, name := range typeOrder {
		parts = append(parts, fmt.Sprintf("%d %s", counts[name], pluralize(name, counts[name])))
	}
	return fmt.Sprintf("%d %s (%s)", len(beds), pluralize("bed", len(beds)), strings.Join(parts, ", "))
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
