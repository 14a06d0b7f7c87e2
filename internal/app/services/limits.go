package services

import "unicode/utf8"

// Column widths of the schema. Longer values are rejected before they reach storage.
const (
	maxUsernameLength   = 50
	maxExamNameLength   = 100
	maxExamTypeLength   = 50
	maxMajorLength      = 100
	maxSubjectLength    = 100
	maxExamTimeLength   = 64
	maxAddressLength    = 255
	maxRoomPrefixLength = 16
)

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}
