package model

// StoredFile describes an upload already written to disk. Services persist the
// descriptor only; byte storage and retrieval belong to the storage package.
type StoredFile struct {
	Filename     string // name under the upload directory
	OriginalName string // client-supplied name, encoding repaired
	MimeType     string
	SizeBytes    int64
}
