package fixedwidth_test

import (
	"fmt"

	"github.com/matzehuels/eventlayout/pkg/fixedwidth"
)

func ExampleEncode() {
	fmt.Printf("%q\n", fixedwidth.Encode("7", 4, "ZERO_LEFT", "INTEIRO"))
	fmt.Printf("%q\n", fixedwidth.Encode("HELLOWORLD", 5, "", "TEXTO"))
	fmt.Printf("%q\n", fixedwidth.Encode("AB", 5, "BLANK_RIGHT", ""))
	fmt.Printf("%q\n", fixedwidth.Encode("42", 5, "", "DECIMAL"))
	// Output:
	// "0007"
	// "HELLO"
	// "   AB"
	// "00042"
}
