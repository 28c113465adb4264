package era_test

import (
	"fmt"

	"github.com/keyxmakerx/hizuke/internal/era"
)

func ExampleConvert() {
	y := era.Convert(2024)
	fmt.Println(y.EraLabel, y.EraKanji, y.EraKana)
	fmt.Println(y.WesternLabel, y.WesternKanji, y.WesternKana)
	// Output:
	// Reiwa 6 令和六年 れいわろくねん
	// 2024 二千二十四年 にせんにじゅうよんねん
}
