package commands

import (
	"fmt"

	"github.com/agiangrant/veneer/retained"
)

// demoState is the state of the replay demo app.
type demoState struct {
	Count   int
	On      bool
	Volume  float32
	Name    string
	Mode    int
	Flavor  int
	Open    bool
	Rows    int
	Edits   int
	Clicked []int
}

var (
	demoModes   = []string{"Day", "Week", "Month"}
	demoFlavors = []string{"Vanilla", "Chocolate", "Mint"}
)

const demoRowHeight = 28

func demoView(s *demoState) retained.View[demoState] {
	root := retained.ID("demo")
	header := retained.Row(root.Child("header"), 8,
		&retained.Button[demoState]{
			Node:    root.Child("increment"),
			Label:   fmt.Sprintf("Clicked %d", s.Count),
			OnPress: func(s *demoState) { s.Count++ },
		},
		&retained.Toggle[demoState]{
			Node: root.Child("toggle"),
			On:   retained.Bind(func(s *demoState) *bool { return &s.On }),
		},
		&retained.SegmentPicker[demoState]{
			Node:     root.Child("mode"),
			Segments: demoModes,
			Selected: retained.Bind(func(s *demoState) *int { return &s.Mode }),
		},
	)
	header.Align = retained.CrossStart

	col := retained.Column(root, 8,
		header,
		&retained.Slider[demoState]{
			Node:  root.Child("volume"),
			Value: retained.Bind(func(s *demoState) *float32 { return &s.Volume }),
			Max:   100,
			Step:  1,
		},
		&retained.TextField[demoState]{
			Node:        root.Child("name"),
			Text:        retained.Bind(func(s *demoState) *string { return &s.Name }),
			Placeholder: "Name",
			OnEdit: func(s *demoState, e retained.EditEvent) {
				if e.Kind == retained.EditUpdate {
					s.Edits++
				}
			},
		},
		&retained.Dropdown[demoState]{
			Node:        root.Child("flavor"),
			Options:     demoFlavors,
			Selected:    retained.Bind(func(s *demoState) *int { return &s.Flavor }),
			Open:        retained.Bind(func(s *demoState) *bool { return &s.Open }),
			Placeholder: "Flavor",
		},
		&retained.Scroller[demoState]{
			Node: root.Child("rows"),
			CellHeight: func(s *demoState, i int) (float32, bool) {
				return demoRowHeight, i >= 0 && i < s.Rows
			},
			Cell: demoRow,
		},
	)
	col.Padding = 12
	col.Background = retained.RGB(0xF8, 0xFA, 0xFC)
	return col
}

func demoRow(s *demoState, index int, id retained.NodeID) retained.View[demoState] {
	fill := retained.RGB(0xFF, 0xFF, 0xFF)
	if index%2 == 1 {
		fill = retained.RGB(0xF1, 0xF5, 0xF9)
	}
	return retained.OnClick(id,
		&retained.Overlay[demoState]{
			Node: id.Child("row"),
			Children: []retained.View[demoState]{
				retained.Draw[demoState](&retained.Rect{Node: id.Child("background"), Fill: fill}),
				retained.Draw[demoState](&retained.Text{Node: id.Child("label"), Content: fmt.Sprintf("Row %d", index)}),
			},
		},
		func(s *demoState) { s.Clicked = append(s.Clicked, index) },
	)
}
