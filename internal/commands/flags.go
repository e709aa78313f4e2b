package commands

import (
	"strconv"
	"strings"
)

// Optional flag values. Each records whether the flag was given at all, so an
// explicit zero ("--order 0") is kept apart from "not given".

type optString struct{ v *string }

func (o *optString) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return *o.v
}

func (o *optString) Set(s string) error {
	o.v = &s
	return nil
}

type optInt32 struct{ v *int32 }

func (o *optInt32) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*o.v), 10)
}

func (o *optInt32) Set(s string) error {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return err
	}
	v := int32(n)
	o.v = &v
	return nil
}

type optUint8 struct{ v *uint8 }

func (o *optUint8) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*o.v), 10)
}

func (o *optUint8) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return err
	}
	v := uint8(n)
	o.v = &v
	return nil
}

type optUint32 struct{ v *uint32 }

func (o *optUint32) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*o.v), 10)
}

func (o *optUint32) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	v := uint32(n)
	o.v = &v
	return nil
}

// labelList collects a repeatable --label flag.
type labelList []string

func (l *labelList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *labelList) Set(s string) error {
	*l = append(*l, s)
	return nil
}
