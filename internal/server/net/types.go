package net

type RGB struct {
	R, G, B uint8
}

type Vector2 struct {
	X, Y float32
}

// TextMode tags how a Text is rendered by the client.
type TextMode uint8

const (
	TextLiteral TextMode = iota
	TextFormattable
	TextLocalizationKey
	TextInvalid
)

// Text is a network text: a literal, a format string, or a localization key,
// the latter two with nested substitutions.
type Text struct {
	Mode          TextMode
	Text          string
	Substitutions []Text
}

func Literal(s string) Text {
	return Text{Mode: TextLiteral, Text: s}
}

func Key(key string, subs ...Text) Text {
	return Text{Mode: TextLocalizationKey, Text: key, Substitutions: subs}
}

func (t Text) String() string {
	return t.Text
}
