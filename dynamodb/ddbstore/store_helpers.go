package ddbstore

func ptrStr(s string) *string {
	return &s
}
