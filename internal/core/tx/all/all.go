// Package all registers every transaction type with the tx registry.
package all

import (
	_ "github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	_ "github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	_ "github.com/LeJamon/goAuctiond/internal/core/tx/payment"
)
