package models

// ContainerKind identifies the outer byte format of a workbook.
type ContainerKind string

const (
	// ContainerPackage is a plain OOXML zip package.
	ContainerPackage ContainerKind = "package"
	// ContainerEncrypted is an OLE compound file wrapping an encrypted package.
	ContainerEncrypted ContainerKind = "encrypted"
)

// ContainerInfo describes a workbook container without decoding its cells.
type ContainerInfo struct {
	// Kind is the outer container format.
	Kind ContainerKind `json:"kind"`
	// Sheets lists worksheet names in workbook order.
	// It is empty for encrypted containers, whose workbook part is not readable
	// without decryption.
	Sheets []string `json:"sheets"`
}

// FirstSheet returns the first worksheet name, or "" when there is none.
func (c ContainerInfo) FirstSheet() string {
	if len(c.Sheets) == 0 {
		return ""
	}
	return c.Sheets[0]
}
