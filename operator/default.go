// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operator

import "sync"

// Precedences of the default table. Higher binds tighter.
const (
	PrecSegment        = 5
	PrecSemicolon      = 10
	PrecKeyword        = 15
	PrecComma          = 20
	PrecDecorator      = 22
	PrecLowColon       = 25
	PrecAssign         = 30
	PrecHighColon      = 32
	PrecArrow          = 35
	PrecTernary        = 40
	PrecCoalesce       = 45
	PrecOr             = 50
	PrecAnd            = 60
	PrecEquality       = 70
	PrecRelational     = 80
	PrecRange          = 85
	PrecBitOr          = 90
	PrecBitXor         = 95
	PrecBitAnd         = 100
	PrecShift          = 110
	PrecAdditive       = 120
	PrecMultiplicative = 130
	PrecPower          = 140
	PrecUnary          = 150
	PrecIncrement      = 160
	PrecNew            = 165
	PrecJoin           = 168
	PrecMember         = 170
)

// JoinText is the spelling of the synthetic token that joins a block to a
// following word, as in if (x) { ... } else { ... }.
const JoinText = `\j`

var defaultTable = sync.OnceValue(func() *Table {
	var ops []*Operator

	infix := func(name Name, prec int, right bool, texts ...string) {
		for _, text := range texts {
			ops = append(ops, &Operator{
				Name: name, Text: text, Type: Infix, Prec: prec,
				MinArity: 3, MaxArity: 3, RightAssoc: right,
			})
		}
	}
	prefix := func(name Name, prec, minArity int, texts ...string) {
		for _, text := range texts {
			ops = append(ops, &Operator{
				Name: name, Text: text, Type: Prefix, Prec: prec,
				MinArity: minArity, MaxArity: 2,
			})
		}
	}
	separator := func(name Name, prec int, text string) {
		ops = append(ops, &Operator{
			Name: name, Text: text, Type: Separator, Prec: prec,
			MinArity: 1, MaxArity: Unbounded,
		})
	}
	group := func(name Name, open, close string) {
		ops = append(ops, &Operator{
			Name: name, Text: open, Type: Prefix, Close: close,
			MinArity: 2, MaxArity: Unbounded,
		})
	}
	postfixGroup := func(name Name, open, close string, bracket bool) {
		ops = append(ops, &Operator{
			Name: name, Text: open, Type: Postfix, Prec: PrecMember, Close: close,
			MinArity: 3, MaxArity: Unbounded, Bracket: bracket,
		})
	}
	delimited := func(name Name, open string) {
		ops = append(ops, &Operator{
			Name: name, Text: open, Type: Prefix, Delimited: true,
			MinArity: 2, MaxArity: Unbounded,
		})
	}

	separator(NameSegment, PrecSegment, ";;;")
	separator(NameSemicolon, PrecSemicolon, ";")

	prefix(NameKeyword, PrecKeyword, 1, "return", "yield", "break", "continue", "fn", "class", "interface")
	prefix(NameKeyword, PrecKeyword, 2, "let", "throw")

	separator(NameComma, PrecComma, ",")

	highColon := &Operator{
		Name: NameHighColon, Text: ":", Type: Infix, Prec: PrecHighColon,
		MinArity: 3, MaxArity: 3,
	}
	ops = append(ops, &Operator{
		Name: NameLowColon, Text: ":", Type: Infix, Prec: PrecLowColon,
		MinArity: 3, MaxArity: 3, Promote: highColon,
	})

	infix(NameAssign, PrecAssign, true,
		"+=", "-=", "*=", "/=", "%=", "**=", "&=", "|=", "^=",
		"<<=", ">>=", ">>>=", "&&=", "||=", "??=")
	ops = append(ops, &Operator{
		Name: NameAssign, Text: "=", Type: Infix, Prec: PrecAssign,
		MinArity: 3, MaxArity: 3, RightAssoc: true, Promotes: true,
	})

	infix(NameArrow, PrecArrow, true, "=>")
	ops = append(ops, &Operator{
		Name: NameTernary, Text: "?", Type: Infix, Prec: PrecTernary,
		MinArity: 5, MaxArity: 5, RightAssoc: true,
		Followers: []Follower{{Index: 3, Text: ":"}},
	})

	infix(NameCoalesce, PrecCoalesce, false, "??")
	infix(NameOr, PrecOr, false, "||", "or")
	infix(NameAnd, PrecAnd, false, "&&", "and")
	infix(NameEquality, PrecEquality, false, "==", "!=", "===", "!==")
	infix(NameRelational, PrecRelational, false, "<", ">", "<=", ">=", "is", "as", "in", "instanceof")
	infix(NameRange, PrecRange, false, "..")
	infix(NameBitOr, PrecBitOr, false, "|")
	infix(NameBitXor, PrecBitXor, false, "^")
	infix(NameBitAnd, PrecBitAnd, false, "&")
	infix(NameShift, PrecShift, false, "<<", ">>", ">>>")
	infix(NameAdditive, PrecAdditive, false, "+", "-")
	infix(NameMultiplicative, PrecMultiplicative, false, "*", "/", "%")
	infix(NamePower, PrecPower, true, "**")

	prefix(NameUnary, PrecUnary, 2, "-", "+", "!", "~", "++", "--", "...", "not", "typeof")
	for _, text := range []string{"++", "--"} {
		ops = append(ops, &Operator{
			Name: NameIncrement, Text: text, Type: Postfix, Prec: PrecIncrement,
			MinArity: 2, MaxArity: 2,
		})
	}

	prefix(NameNew, PrecNew, 2, "new")
	ops = append(ops, &Operator{
		Name: NameJoin, Text: JoinText, Type: Infix, Prec: PrecJoin,
		MinArity: 3, MaxArity: 3, SyntheticOnly: true,
	})

	infix(NameMember, PrecMember, false, ".", "?.")
	postfixGroup(NameCall, "(", ")", false)
	postfixGroup(NameIndex, "[", "]", false)
	postfixGroup(NameGeneric, "<", ">", true)
	postfixGroup(NameBlockCall, "{", "}", false)

	// @name target: the name binds like a member access, the target like
	// one item of a comma run.
	ops = append(ops, &Operator{
		Name: NameDecorator, Text: "@", Type: Prefix, Prec: PrecDecorator,
		MinArity: 3, MaxArity: 3, HeadPrec: PrecMember,
	})

	group(NameParen, "(", ")")
	group(NameList, "[", "]")
	group(NameBlock, "{", "}")

	delimited(NameQuotedGroup, "")
	delimited(NameHole, "${")
	delimited(NameScriptlet, "{:")
	delimited(NameUnicodeRun, `\u{`)

	return NewTable(ops...)
})

// Default returns the default operator table.
func Default() *Table {
	return defaultTable()
}
