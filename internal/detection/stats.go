package detection

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Report is the per-image census summary.
type Report struct {
	// Name identifies the image, usually its file name.
	Name string `json:"name"`

	// Total is the number of detected objects.
	Total int `json:"total"`

	// SmallestID and LargestID are the ids of the objects with the smallest
	// and largest area, or 0 when nothing was detected.
	SmallestID int `json:"smallest_id"`
	LargestID  int `json:"largest_id"`

	// Counts tallies every label, pentagons included.
	Counts map[ShapeLabel]int `json:"counts"`

	// Objects is sorted by area ascending; equal areas keep id order.
	Objects []Object `json:"objects"`
}

// Aggregate sorts the objects by area and tallies them into a Report.
// The input slice is not modified.
func Aggregate(name string, objects []Object) Report {
	sorted := make([]Object, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area < sorted[j].Area
	})

	counts := make(map[ShapeLabel]int, len(Labels))
	for _, l := range Labels {
		counts[l] = 0
	}
	for _, o := range sorted {
		counts[o.Label]++
	}

	r := Report{
		Name:    name,
		Total:   len(sorted),
		Counts:  counts,
		Objects: sorted,
	}
	if len(sorted) > 0 {
		r.SmallestID = sorted[0].ID
		r.LargestID = sorted[len(sorted)-1].ID
	}
	return r
}

// Count returns the number of objects with the given label.
func (r Report) Count(l ShapeLabel) int {
	return r.Counts[l]
}

// WriteText writes the plain-text summary. Pentagons are counted in the
// report but have no line of their own in the summary.
func (r Report) WriteText(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("------ %s stats ------", r.Name),
		fmt.Sprintf("The number of objects in the scene is : %d", r.Total),
		fmt.Sprintf("The smallest object in the scene is : %d", r.SmallestID),
		fmt.Sprintf("The largest object in the scene is : %d", r.LargestID),
		fmt.Sprintf("The number of triangular-like object in the scene is : %d", r.Count(Triangle)),
		fmt.Sprintf("The number of rectangle-like object in the scene is : %d", r.Count(Rectangle)),
		fmt.Sprintf("The number of square-like object in the scene is : %d", r.Count(Square)),
		fmt.Sprintf("The number of hexagon-like object in the scene is : %d", r.Count(Hexagon)),
		fmt.Sprintf("The number of circle-like object in the scene is : %d", r.Count(Circle)),
		fmt.Sprintf("The number of object are unidentified with the shape is : %d", r.Count(Undefined)),
		fmt.Sprintf("------ end of %s stats ------", r.Name),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// Text returns the plain-text summary as a string.
func (r Report) Text() string {
	var b strings.Builder
	_ = r.WriteText(&b)
	return b.String()
}
