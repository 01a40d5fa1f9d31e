package domain

// A4 at 96 DPI.
const (
	A4ViewportWidth  = 794
	A4ViewportHeight = 1123
)

// Margin presets in millimetres.
const (
	MarginStandardMM = 20
	MarginCompactMM  = 5
)

// PageSetup describes how a document is laid out before printing. The paper
// is always A4; only the viewport and uniform margin vary.
type PageSetup struct {
	ViewportWidth  int64
	ViewportHeight int64
	MarginMM       float64
}

// PDFDocument is a rendered export ready to be sent to a client.
type PDFDocument struct {
	Filename string
	Data     []byte
}
