package labels

import "strconv"

const (
	yiqTextDark            = "#212529"
	yiqTextLight           = "#ffffff"
	yiqContrastedThreshold = 150

	noColorBorder = "#00000040"
)

// ColorYIQ picks a legible text color for the given #rrggbb background
// using the YIQ luma formula: backgrounds with luma >= 150 get dark text,
// darker backgrounds get light text.
func ColorYIQ(color string) string {
	if len(color) != 7 || color[0] != '#' {
		return yiqTextDark
	}

	r, errR := strconv.ParseInt(color[1:3], 16, 32)
	g, errG := strconv.ParseInt(color[3:5], 16, 32)
	b, errB := strconv.ParseInt(color[5:7], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return yiqTextDark
	}

	yiq := (r*299 + g*587 + b*114) / 1000
	if yiq >= yiqContrastedThreshold {
		return yiqTextDark
	}
	return yiqTextLight
}
