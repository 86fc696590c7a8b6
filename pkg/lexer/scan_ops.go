package lexer

import (
	"github.com/yaklabco/headertool/pkg/token"
)

// scanSymbol takes the longest operator or punctuator at the cursor,
// trying three, then two, then one byte.
func (lx *lexer) scanSymbol() error {
	start := lx.pos

	for n := uint32(token.MaxSymbolLen); n >= 1; n-- {
		if lx.limit-lx.pos < n {
			continue
		}
		if token.IsSymbol(string(lx.src[lx.pos : lx.pos+n])) {
			lx.pos += n
			lx.emit(token.Symbol, start)
			return nil
		}
	}

	return lx.unexpected()
}
