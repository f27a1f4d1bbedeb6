package objectcount

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ClassSet is a set of enabled class ids for a counter.  A nil ClassSet
// enables all classes.  A non-nil empty ClassSet enables none, which is
// how the NONE preset is expressed.
type ClassSet map[int]struct{}

// NewClassSet creates a ClassSet from the given class ids.  Calling it
// with no ids returns an empty (nothing enabled) set.
func NewClassSet(ids ...int) ClassSet {

	s := make(ClassSet, len(ids))

	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// Enabled reports whether the given class id is enabled by the set
func (s ClassSet) Enabled(class int) bool {

	if s == nil {
		return true
	}

	_, ok := s[class]
	return ok
}

// IDs returns the class ids in the set in ascending order
func (s ClassSet) IDs() []int {

	if s == nil {
		return nil
	}

	ids := make([]int, 0, len(s))

	for id := range s {
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids
}

// COCOClassNames is the 80 class universe of the COCO dataset, indexed by
// class id
var COCOClassNames = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train",
	"truck", "boat", "traffic light", "fire hydrant", "stop sign",
	"parking meter", "bench", "bird", "cat", "dog", "horse", "sheep",
	"cow", "elephant", "bear", "zebra", "giraffe", "backpack", "umbrella",
	"handbag", "tie", "suitcase", "frisbee", "skis", "snowboard",
	"sports ball", "kite", "baseball bat", "baseball glove", "skateboard",
	"surfboard", "tennis racket", "bottle", "wine glass", "cup", "fork",
	"knife", "spoon", "bowl", "banana", "apple", "sandwich", "orange",
	"broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv",
	"laptop", "mouse", "remote", "keyboard", "cell phone", "microwave",
	"oven", "toaster", "sink", "refrigerator", "book", "clock", "vase",
	"scissors", "teddy bear", "hair drier", "toothbrush",
}

// AllClasses returns a ClassSet containing the full COCO class universe
func AllClasses() ClassSet {

	ids := make([]int, len(COCOClassNames))

	for i := range ids {
		ids[i] = i
	}

	return NewClassSet(ids...)
}

// NoClasses returns a ClassSet with nothing enabled
func NoClasses() ClassSet {
	return NewClassSet()
}

// CommonClasses returns the COMMON preset, the classes typically counted
// in traffic and pedestrian scenes: person, bicycle, car, motorcycle,
// bus, truck, cat and dog.
func CommonClasses() ClassSet {
	return NewClassSet(0, 1, 2, 3, 5, 7, 15, 16)
}

// ClassName returns the display name for a class id using the given label
// list, falling back to the numeric id when out of range
func ClassName(labels []string, class int) string {

	if class >= 0 && class < len(labels) {
		return labels[class]
	}

	return fmt.Sprintf("class %d", class)
}

// LoadClassNames reads class names from the given text file.  It should
// contain one label per line, line number corresponding to class id.
func LoadClassNames(file string) ([]string, error) {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	// create a scanner to read the file.
	scanner := bufio.NewScanner(f)

	var labels []string

	// read and trim each line
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		labels = append(labels, line)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return labels, nil
}
