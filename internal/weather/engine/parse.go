package engine

// fault describes why a line could not be parsed. The zero value means the
// line is well formed.
type fault uint8

const (
	faultNone fault = iota
	faultNoSeparator
	faultEmptyName
	faultNoValue
	faultNoDigit
	faultTooManyDigits
	faultNoDot
	faultNoFraction
	faultLongFraction
)

func (f fault) String() string {
	switch f {
	case faultNone:
		return "ok"
	case faultNoSeparator:
		return "missing ';' separator"
	case faultEmptyName:
		return "empty station name"
	case faultNoValue:
		return "missing value"
	case faultNoDigit:
		return "expected digit"
	case faultTooManyDigits:
		return "integer part has more than two digits"
	case faultNoDot:
		return "missing '.' in value"
	case faultNoFraction:
		return "missing fractional digit"
	case faultLongFraction:
		return "more than one fractional digit"
	default:
		return "unknown fault"
	}
}

// ParseLine splits one record, without its line terminator, into the station
// name and the value in tenths. The name aliases line.
func ParseLine(line []byte) ([]byte, int16, error) {
	name, value, f := parseLine(line)
	if f != faultNone {
		return nil, 0, &RecordError{Start: 0, End: int64(len(line)), Reason: f.String()}
	}

	return name, value, nil
}

func parseLine(line []byte) ([]byte, int16, fault) {
	sep := -1
	for i, c := range line {
		if c == ';' {
			sep = i
			break
		}
	}

	if sep < 0 {
		return nil, 0, faultNoSeparator
	}
	if sep == 0 {
		return nil, 0, faultEmptyName
	}

	value, f := parseTenths(line[sep+1:])
	if f != faultNone {
		return nil, 0, f
	}

	return line[:sep], value, faultNone
}

// parseTenths parses -?[0-9]{1,2}\.[0-9] into an integer scaled by ten.
func parseTenths(b []byte) (int16, fault) {
	if len(b) == 0 {
		return 0, faultNoValue
	}

	neg := b[0] == '-'
	if neg {
		b = b[1:]
	}

	var v int16
	i := 0
	for ; i < len(b) && b[i] != '.'; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, faultNoDigit
		}
		if i == 2 {
			return 0, faultTooManyDigits
		}
		v = v*10 + int16(c-'0')
	}

	switch {
	case i == 0:
		return 0, faultNoDigit
	case i == len(b):
		return 0, faultNoDot
	case i+1 == len(b):
		return 0, faultNoFraction
	}

	c := b[i+1]
	if c < '0' || c > '9' {
		return 0, faultNoDigit
	}
	if i+2 != len(b) {
		return 0, faultLongFraction
	}

	v = v*10 + int16(c-'0')
	if neg {
		v = -v
	}

	return v, faultNone
}
