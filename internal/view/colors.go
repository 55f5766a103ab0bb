package view

import (
	"hash/fnv"
	"strconv"
)

// Style is the background/border/text triple the table renderer applies to
// a row. Purely presentational.
type Style struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

var lightStyles = []Style{
	{Background: "#fde2e4", Border: "#f38ba0", Text: "#8a2232"},
	{Background: "#fff1d6", Border: "#f2b04e", Text: "#7a4a09"},
	{Background: "#e3f6e8", Border: "#6fc284", Text: "#1f5e32"},
	{Background: "#dff0fb", Border: "#5ea9dd", Text: "#144b72"},
	{Background: "#ece4f9", Border: "#9e7fd6", Text: "#45266f"},
	{Background: "#fbe5f3", Border: "#de7ab8", Text: "#701c4f"},
}

var darkStyles = []Style{
	{Background: "#f38ba0", Border: "#c94f68", Text: "#ffffff"},
	{Background: "#f2b04e", Border: "#c77f1d", Text: "#ffffff"},
	{Background: "#6fc284", Border: "#3f8f54", Text: "#ffffff"},
	{Background: "#5ea9dd", Border: "#2f79ab", Text: "#ffffff"},
	{Background: "#9e7fd6", Border: "#6d4fa4", Text: "#ffffff"},
	{Background: "#de7ab8", Border: "#ab4a87", Text: "#ffffff"},
}

// ColorFor maps a course id to a palette slot. The mapping is a function of
// the id alone, so a course keeps its color across expansion, paging, and
// filtering.
func ColorFor(courseID int) int {
	h := fnv.New32a()
	h.Write([]byte(strconv.Itoa(courseID)))
	return int(h.Sum32() % uint32(len(lightStyles)))
}

// DarkVariant reports whether a section renders the dark variant of its
// course color: odd sections dark, even sections light.
func DarkVariant(sectionNumber int) bool {
	return sectionNumber%2 != 0
}

// StyleFor returns the style triple for a palette slot and variant.
func StyleFor(colorIndex int, dark bool) Style {
	if colorIndex < 0 || colorIndex >= len(lightStyles) {
		colorIndex = 0
	}
	if dark {
		return darkStyles[colorIndex]
	}
	return lightStyles[colorIndex]
}

// Palette returns copies of the light and dark palettes, indexed by slot.
func Palette() (light, dark []Style) {
	light = append(light, lightStyles...)
	dark = append(dark, darkStyles...)
	return light, dark
}
