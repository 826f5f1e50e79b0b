package tools

import "coursecanvas/internal/scene"

// Settings is the per-tool settings record. Each tool keeps its own copy;
// changing the pen's color never affects the brush's.
type Settings struct {
	Size       float32         `toml:"size" json:"size"`
	Color      string          `toml:"color" json:"color"`
	FontFamily string          `toml:"font_family" json:"fontFamily"`
	FontSize   float32         `toml:"font_size" json:"fontSize"`
	Shape      scene.ShapeKind `toml:"shape" json:"shape"`
	TableRows  int             `toml:"table_rows" json:"tableRows"`
	TableCols  int             `toml:"table_cols" json:"tableCols"`
}

// SettingsPatch is a partial settings update; nil fields are left alone.
type SettingsPatch struct {
	Size       *float32
	Color      *string
	FontFamily *string
	FontSize   *float32
	Shape      *scene.ShapeKind
	TableRows  *int
	TableCols  *int
}

func (s Settings) apply(p SettingsPatch) Settings {
	if p.Size != nil {
		s.Size = *p.Size
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Shape != nil {
		s.Shape = *p.Shape
	}
	if p.TableRows != nil {
		s.TableRows = *p.TableRows
	}
	if p.TableCols != nil {
		s.TableCols = *p.TableCols
	}
	return s
}

// DefaultSettings returns the built-in settings record for a tool variant.
func DefaultSettings(n Name) Settings {
	switch n {
	case ToolPen:
		return Settings{Size: 2, Color: "#1a1a1a"}
	case ToolBrush:
		return Settings{Size: 4, Color: "#1a1a1a"}
	case ToolText:
		return Settings{Color: "#1a1a1a", FontFamily: "Inter", FontSize: 16}
	case ToolShapes:
		return Settings{Size: 2, Color: "#1a1a1a", Shape: scene.ShapeRectangle}
	case ToolEraser:
		return Settings{Size: 20}
	case ToolTables:
		return Settings{Size: 1, Color: "#1a1a1a", TableRows: 3, TableCols: 3}
	default:
		return Settings{Size: 1, Color: "#1a1a1a"}
	}
}

// AllTools lists the closed variant set in display order.
var AllTools = []Name{ToolSelection, ToolPen, ToolBrush, ToolText, ToolShapes, ToolTables, ToolEraser}
