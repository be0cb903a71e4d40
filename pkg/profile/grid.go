package profile

import (
	"fmt"

	funk "github.com/thoas/go-funk"

	"github.com/mirabox/vtsgen/pkg/models"
)

// Slot keys are "col,row" strings as the StreamDock manifests expect them.
// Rows are walked top-down (highest row first), matching the physical
// button order of the device.
func slotKey(col, row int) string {
	return fmt.Sprintf("%d,%d", col, row)
}

func allSlots() []string {
	slots := make([]string, 0, models.Columns*models.Rows)
	for row := models.Rows - 1; row >= 0; row-- {
		for col := 0; col < models.Columns; col++ {
			slots = append(slots, slotKey(col, row))
		}
	}
	return slots
}

var (
	prevSlot = slotKey(0, 0)
	nextSlot = slotKey(models.Columns-1, 0)

	// homeSlot on page one of a model profile jumps back to the Home profile.
	homeSlot = slotKey(0, models.Rows-1)
)

// usableSlots are the positions left after reserving the navigation corners.
func usableSlots() []string {
	return funk.FilterString(allSlots(), func(s string) bool {
		return s != prevSlot && s != nextSlot
	})
}

// pageCapacity is the number of hotkey buttons a model profile page holds.
// First and last pages regain one navigation corner each.
func pageCapacity(pageIdx, totalPages int) int {
	switch {
	case totalPages == 1:
		return 14
	case pageIdx == 0:
		return 14
	case pageIdx == totalPages-1:
		return 14
	default:
		return 13
	}
}

// homePageCapacity is the number of model buttons a Home page holds. A
// single page has no navigation at all and uses the full grid.
func homePageCapacity(pageIdx, totalPages int) int {
	switch {
	case totalPages == 1:
		return 15
	case pageIdx == 0:
		return 14
	case pageIdx == totalPages-1:
		return 14
	default:
		return 13
	}
}
