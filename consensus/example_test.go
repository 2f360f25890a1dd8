package consensus_test

import (
	"fmt"

	"github.com/katalvlaran/lvfold/consensus"
)

func ExampleExtractDotBracket() {
	var inputs []consensus.Input
	for _, db := range []string{"((..))", "(....)", "((..))", ".(..)."} {
		in, err := consensus.FromDotBracket(db)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		inputs = append(inputs, in)
	}

	db, _ := consensus.ExtractDotBracket(inputs)
	fmt.Println(db)
	// Output:
	// ((..))
}
