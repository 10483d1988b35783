package token

import "sort"

const (
	Pipe       = '|'
	Backtick   = '`'
	Quote      = '"'
	RootMarker = rune(0)
)

// Bracket-style markers open with one rune and close with another.
var brackets = map[rune]rune{
	'[': ']',
	'<': '>',
	'{': '}',
}

// Toggle-style markers open and close with the same rune.
var toggles = map[rune]bool{
	'~': true,
	'*': true,
	'_': true,
	'^': true,
	'#': true,
	'%': true,
	'+': true,
	'=': true,
	'@': true,
	'$': true,
	'!': true,
	'&': true,
}

var closers = func() map[rune]rune {
	var m = make(map[rune]rune, len(brackets))
	for l, r := range brackets {
		m[r] = l
	}
	return m
}()

func IsOpener(r rune) bool {
	var _, ok = brackets[r]
	return ok
}

func IsCloser(r rune) bool {
	var _, ok = closers[r]
	return ok
}

func IsToggle(r rune) bool {
	return toggles[r]
}

// IsMarker reports whether r can open a tag.
func IsMarker(r rune) bool {
	return IsOpener(r) || IsToggle(r)
}

func IsSpecial(r rune) bool {
	switch r {
	case Pipe, Backtick, Quote:
		return true
	}
	return IsMarker(r) || IsCloser(r)
}

// GetRight returns the rune that closes a tag opened by marker. For toggle
// markers that is the marker itself. It returns 0 for anything that is not a
// marker, including RootMarker.
func GetRight(marker rune) rune {
	if r, ok := brackets[marker]; ok {
		return r
	}
	if toggles[marker] {
		return marker
	}
	return 0
}

// GetLeft is the inverse of GetRight for bracket closers.
func GetLeft(closer rune) rune {
	return closers[closer]
}

// Markers returns every rune that can open a tag, sorted.
func Markers() []rune {
	var markers = make([]rune, 0, len(brackets)+len(toggles))
	for r := range brackets {
		markers = append(markers, r)
	}
	for r := range toggles {
		markers = append(markers, r)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i] < markers[j] })
	return markers
}

// IndexSpecial returns the index of the first special rune in src at or after
// from, or -1.
func IndexSpecial(src []rune, from int) int {
	for i := from; i < len(src); i++ {
		if IsSpecial(src[i]) {
			return i
		}
	}
	return -1
}
