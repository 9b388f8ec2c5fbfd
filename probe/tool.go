package probe

// ToolType classifies a tool-table record. Only the touch probe type
// affects probing defaults.
type ToolType string

const (
	ToolTypeEndmill    ToolType = "endmill"
	ToolTypeDrill      ToolType = "drill"
	ToolTypeTouchProbe ToolType = "touch-probe"
)

// Tool is the slice of a tool-table record probing reads: the record
// is looked up once at construction and never owned.
type Tool struct {
	Number       int      `xml:"number,attr"`
	Type         ToolType `xml:"type,attr"`
	LengthOffset float64  `xml:"offset,attr"`
}

// ToolTable resolves a tool number to its record.
type ToolTable interface {
	Find(number int) (Tool, bool)
}

type MapToolTable map[int]Tool

func (m MapToolTable) Find(number int) (Tool, bool) {
	t, ok := m[number]
	return t, ok
}
