package diag

import "fmt"

// Code is a stable identifier for one diagnostic rule.
type Code uint16

const (
	UnknownCode Code = 0

	// Condition analysis (1000-1999)
	CndInfo        Code = 1000
	CndAlwaysTrue  Code = 1001
	CndAlwaysFalse Code = 1002
	CndNotBoolean  Code = 1003

	// Initialization order (2000-2999)
	IniInfo          Code = 2000
	IniUseBeforeInit Code = 2001

	// I/O (4000-4999)
	IOLoadFileError Code = 4001
	IOSnapshotError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:      "Unknown diagnostic",
	CndInfo:          "Condition analysis information",
	CndAlwaysTrue:    "Condition always evaluates to true",
	CndAlwaysFalse:   "Condition always evaluates to false",
	CndNotBoolean:    "Condition is not a boolean type",
	IniInfo:          "Initialization order information",
	IniUseBeforeInit: "Parameter property used before initialization",
	IOLoadFileError:  "I/O load file error",
	IOSnapshotError:  "Snapshot decode error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CND%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("INI%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
