package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/ukaji3/xledit-go/pkg/xledit/models"
)

// Container probe errors.
var (
	// ErrUnknownSignature indicates the bytes are neither a zip package nor an OLE compound file.
	ErrUnknownSignature = errors.New("unrecognized container signature")
	// ErrWorkbookMissing indicates a zip archive without a workbook part.
	ErrWorkbookMissing = errors.New("workbook part not found")
	// ErrWorksheetMissing indicates a worksheet listed in the workbook has no part in the archive.
	ErrWorksheetMissing = errors.New("worksheet part not found")
	// ErrLegacyBinary indicates an OLE compound file that is not an encrypted package.
	ErrLegacyBinary = errors.New("legacy binary workbook")
)

var (
	zipSignature      = []byte("PK\x03\x04")
	emptyZipSignature = []byte("PK\x05\x06")
	oleSignature      = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

const (
	defaultWorkbookPath  = "xl/workbook.xml"
	encryptedPackageName = "EncryptedPackage"
)

// sheetRef is a <sheet> entry of workbook.xml.
type sheetRef struct {
	name string
	rID  string
}

// relationship is a <Relationship> entry of a .rels part.
type relationship struct {
	typ    string
	target string
}

// Inspect identifies the container format of data and lists its worksheets
// in workbook order. The workbook, its relationships and the first
// worksheet must be well-formed XML.
func Inspect(data []byte) (models.ContainerInfo, error) {
	switch {
	case bytes.HasPrefix(data, oleSignature):
		return inspectCompound(data)
	case bytes.HasPrefix(data, zipSignature), bytes.HasPrefix(data, emptyZipSignature):
		return inspectPackage(data)
	}
	return models.ContainerInfo{}, ErrUnknownSignature
}

// inspectCompound looks for the encrypted package stream inside an OLE file.
func inspectCompound(data []byte) (models.ContainerInfo, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("read compound file: %w", err)
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == encryptedPackageName {
			return models.ContainerInfo{Kind: models.ContainerEncrypted}, nil
		}
	}

	return models.ContainerInfo{}, ErrLegacyBinary
}

// inspectPackage walks workbook.xml and its relationships inside a zip package.
func inspectPackage(data []byte) (models.ContainerInfo, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("open archive: %w", err)
	}

	wbPath, err := workbookPath(r)
	if err != nil {
		return models.ContainerInfo{}, err
	}

	workbookXML, err := readZipFile(r, wbPath)
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("read %s: %w", wbPath, err)
	}
	if workbookXML == nil {
		return models.ContainerInfo{}, ErrWorkbookMissing
	}

	refs, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("parse %s: %w", wbPath, err)
	}

	info := models.ContainerInfo{Kind: models.ContainerPackage, Sheets: []string{}}
	if len(refs) == 0 {
		return info, nil
	}

	wbDir := path.Dir(wbPath)
	relsPath := path.Join(wbDir, "_rels", path.Base(wbPath)+".rels")
	relsXML, err := readZipFile(r, relsPath)
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("read %s: %w", relsPath, err)
	}
	rels, err := parseRelationships(relsXML)
	if err != nil {
		return models.ContainerInfo{}, fmt.Errorf("parse %s: %w", relsPath, err)
	}

	var firstPath string
	for _, ref := range refs {
		rel, ok := rels[ref.rID]
		if !ok || !isWorksheetRelationship(rel) {
			continue
		}
		if firstPath == "" {
			firstPath = resolvePartPath(rel.target, wbDir)
		}
		info.Sheets = append(info.Sheets, ref.name)
	}

	if firstPath != "" {
		sheetXML, err := readZipFile(r, firstPath)
		if err != nil {
			return models.ContainerInfo{}, fmt.Errorf("read %s: %w", firstPath, err)
		}
		if sheetXML == nil {
			return models.ContainerInfo{}, fmt.Errorf("%w: %s", ErrWorksheetMissing, firstPath)
		}
		if err := checkWellFormed(sheetXML); err != nil {
			return models.ContainerInfo{}, fmt.Errorf("parse %s: %w", firstPath, err)
		}
	}

	return info, nil
}

// workbookPath returns the officeDocument target of the package root
// relationships, falling back to xl/workbook.xml.
func workbookPath(r *zip.Reader) (string, error) {
	rootRels, err := readZipFile(r, "_rels/.rels")
	if err != nil {
		return "", fmt.Errorf("read _rels/.rels: %w", err)
	}
	if rootRels == nil {
		return defaultWorkbookPath, nil
	}

	rels, err := parseRelationships(rootRels)
	if err != nil {
		return "", fmt.Errorf("parse _rels/.rels: %w", err)
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.typ, "/officeDocument") {
			return resolvePartPath(rel.target, ""), nil
		}
	}
	return defaultWorkbookPath, nil
}

func isWorksheetRelationship(rel relationship) bool {
	if rel.typ != "" {
		return strings.HasSuffix(rel.typ, "/worksheet")
	}
	return strings.Contains(strings.ToLower(rel.target), "worksheets/")
}

// readZipFile returns the content of a part, or nil when the archive has
// no such part.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	data, err := fs.ReadFile(r, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// resolvePartPath resolves a relationship target against the directory of
// the part that owns the relationship.
func resolvePartPath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(baseDir, target)), "/")
}

// parseWorkbookSheets returns the <sheet> entries of workbook.xml in document order.
func parseWorkbookSheets(data []byte) ([]sheetRef, error) {
	var result []sheetRef
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var ref sheetRef
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					ref.name = attr.Value
				case "id":
					ref.rID = attr.Value
				}
			}
			if ref.name != "" && ref.rID != "" {
				result = append(result, ref)
			}
		}
	}

	return result, nil
}

// parseRelationships maps relationship ids to their type and target.
// A nil part yields an empty map.
func parseRelationships(data []byte) (map[string]relationship, error) {
	result := make(map[string]relationship)
	if data == nil {
		return result, nil
	}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var id string
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					id = attr.Value
				case "Type":
					rel.typ = attr.Value
				case "Target":
					rel.target = attr.Value
				}
			}
			if id != "" {
				result[id] = rel
			}
		}
	}

	return result, nil
}

// checkWellFormed reads every token of an XML part.
func checkWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	sawElement := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := token.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return errors.New("no root element")
	}
	return nil
}
