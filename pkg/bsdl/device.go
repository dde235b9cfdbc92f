package bsdl

import (
	"errors"
	"strings"
)

// ErrNoIDCode is returned when the entity has no IDCODE_REGISTER attribute.
var ErrNoIDCode = errors.New("bsdl: no IDCODE_REGISTER")

// DeviceInfo summarizes the IEEE 1149.1 identification attributes.
type DeviceInfo struct {
	IDCode            string // 32-bit pattern, may contain X wildcards
	InstructionLength int
	BoundaryLength    int
}

// DeviceInfo collects the identification attributes of the entity.
func (e *Entity) DeviceInfo() DeviceInfo {
	var info DeviceInfo
	if a := e.Attribute("IDCODE_REGISTER"); a != nil {
		info.IDCode = a.Value.Text()
	}
	if a := e.Attribute("INSTRUCTION_LENGTH"); a != nil {
		info.InstructionLength, _ = a.Value.Integer()
	}
	if a := e.Attribute("BOUNDARY_LENGTH"); a != nil {
		info.BoundaryLength, _ = a.Value.Integer()
	}
	return info
}

// IDCode returns the IDCODE value and the mask of its significant bits.
func (e *Entity) IDCode() (value, mask uint32, err error) {
	info := e.DeviceInfo()
	if info.IDCode == "" {
		return 0, 0, ErrNoIDCode
	}
	value, mask, _ = ParseBinaryString(info.IDCode)
	return value, mask, nil
}

// ParseBinaryString converts a binary string with optional X wildcards to a
// value and a mask of the non-wildcard bits. Other characters are ignored.
func ParseBinaryString(s string) (value uint32, mask uint32, hasWildcards bool) {
	for _, ch := range strings.TrimSpace(s) {
		switch ch {
		case '0', '1':
			value = value<<1 | uint32(ch-'0')
			mask = mask<<1 | 1
		case 'X', 'x':
			value <<= 1
			mask <<= 1
			hasWildcards = true
		}
	}
	return value, mask, hasWildcards
}
