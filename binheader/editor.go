// Package binheader applies BinaryHeaderEdit operations to the 400-byte
// binary header (component D), resolving each field either by name through
// header.BinaryFields or, for a custom (offset, width, signed) triple, by
// bypassing the table entirely (spec.md §4.4).
package binheader

import (
	"fmt"
	"strconv"

	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/header"
)

// Apply writes every field edit into view in order, skipping no-op writes
// (new value equal to old), and returns one ChangeEvent per field actually
// changed.
func Apply(view *header.View, edits []edit.BinaryFieldEdit) ([]edit.ChangeEvent, error) {
	var events []edit.ChangeEvent
	for _, e := range edits {
		spec, name, err := resolve(e)
		if err != nil {
			return events, err
		}

		old := view.GetSpec(spec)
		if old == e.Value {
			continue
		}
		if err := view.SetSpec(spec, e.Value); err != nil {
			return events, fmt.Errorf("binheader: field %q: %w", name, err)
		}
		events = append(events, edit.ChangeEvent{
			Region:   edit.RegionBinary,
			Field:    name,
			OldValue: strconv.FormatInt(old, 10),
			NewValue: strconv.FormatInt(e.Value, 10),
		})
	}
	return events, nil
}

func resolve(e edit.BinaryFieldEdit) (header.FieldSpec, string, error) {
	if !e.UsesCustomOffset() {
		spec, err := header.BinaryFields.Lookup(e.Name)
		return spec, e.Name, err
	}
	spec, err := header.BinaryFields.Custom(e.Offset, e.Width, e.Signed)
	name := fmt.Sprintf("offset_%d_width_%d", e.Offset, e.Width)
	return spec, name, err
}
