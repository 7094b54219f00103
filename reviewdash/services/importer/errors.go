package importer

import "errors"

var (
	ErrFileNotFound = errors.New("import file not found")
	ErrParse        = errors.New("import file parse failed")
	ErrUnknownKind  = errors.New("unknown import kind")
	ErrValidation   = errors.New("invalid record")
)
