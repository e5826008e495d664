package glshape

import (
	"fmt"

	"github.com/soypat/polyview"
)

// Set is an ordered collection of shapes that share a lifetime.
type Set struct {
	shapes []*Shape
}

// NewSet uploads every mesh. If any upload fails the shapes created so far
// are deleted.
func NewSet(meshes []polyview.Mesh) (*Set, error) {
	set := &Set{shapes: make([]*Shape, 0, len(meshes))}
	for i, m := range meshes {
		s, err := NewShape(m)
		if err != nil {
			set.Delete()
			return nil, fmt.Errorf("uploading shape %d: %w", i, err)
		}
		set.shapes = append(set.shapes, s)
	}
	return set, nil
}

func (set *Set) Len() int { return len(set.shapes) }

// At returns the ith shape.
func (set *Set) At(i int) *Shape { return set.shapes[i] }

// Replace uploads m and swaps it in at index i. The previous shape is only
// freed once the new one uploaded successfully.
func (set *Set) Replace(i int, m polyview.Mesh) error {
	if i < 0 || i >= len(set.shapes) {
		return fmt.Errorf("shape index %d out of range [0, %d)", i, len(set.shapes))
	}
	s, err := NewShape(m)
	if err != nil {
		return err
	}
	set.shapes[i].Delete()
	set.shapes[i] = s
	return nil
}

// Delete frees every shape in the set.
func (set *Set) Delete() {
	for _, s := range set.shapes {
		s.Delete()
	}
}
