package layout_test

import (
	"fmt"

	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

func ExampleValidate() {
	records := []*field.Record{
		{Line: 6, Name: "CODIGO", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3)},
		{Line: 7, Name: "VALOR", Input: "S", Start: field.IntPtr(3), Size: field.IntPtr(5)},
	}

	rep := layout.Validate(records)
	fmt.Println(rep.Valid())
	for _, msg := range rep.Messages(layout.SeverityError) {
		fmt.Println(msg)
	}
	// Output:
	// false
	// overlap between 'CODIGO' (ends at 3) and 'VALOR' (starts at 3)
}

func ExampleRecalculate() {
	records := []*field.Record{
		{Name: "CODIGO", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3)},
		{Name: "VALOR", Input: "S", Start: field.IntPtr(3), Size: field.IntPtr(5)},
	}

	total := layout.Recalculate(records)
	for _, r := range records {
		fmt.Printf("%s %d-%d\n", r.Name, *r.Start, *r.End)
	}
	fmt.Println(total)
	// Output:
	// CODIGO 1-3
	// VALOR 4-8
	// 8
}
