package inventory

import "fmt"

// base-10 units, GBytes rather than GiBytes
var scaleUnits = []string{"", "K", "M", "G", "T"}

// PrettySize renders a byte count the way the listing output always has,
// e.g. 2971821278 becomes "2.97 GBytes".
func PrettySize(n int64) string {
	f := float64(n)
	scale := 0
	for f >= 1000 && scale < len(scaleUnits)-1 {
		scale++
		f /= 1000
	}
	if scale == 0 {
		return fmt.Sprintf("%.0f Bytes", f)
	}
	return fmt.Sprintf("%.2f %sBytes", f, scaleUnits[scale])
}
