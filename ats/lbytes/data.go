package lbytes

import (
	"bytes"
)

type (
	Reader struct {
		bytes.Reader
	}
	Writer struct {
		bytes.Buffer
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)
