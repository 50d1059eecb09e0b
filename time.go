package asn1plus

/*
time.go implements all temporal syntaxes and matching rules -- namely
those for Generalized Time and the (deprecated) UTC Time.
*/

import "time"

const (
	genTimeLayout = "20060102150405"
	utcTimeLayout = "0601021504"
)

/*
Temporal is a date and time interface qualified by instances of the
following types:

  - [GeneralizedTime]
  - [UTCTime]
*/
type Temporal interface {
	Cast() time.Time
	String() string
}

/*
GeneralizedTime aliases an instance of [time.Time] to implement ASN.1 GENERALIZED
TIME (tag 24).
*/
type GeneralizedTime time.Time

/*
Tag returns the integer constant [TagGeneralizedTime].
*/
func (r GeneralizedTime) Tag() int { return TagGeneralizedTime }

/*
IsPrimitive returns true, indicating the receiver is a known
ASN.1 primitive.
*/
func (r GeneralizedTime) IsPrimitive() bool { return true }

/*
NewGeneralizedTime returns an instance of [GeneralizedTime] alongside an error
following an attempt to marshal x.
*/
func NewGeneralizedTime(x any, constraints ...Constraint) (gt GeneralizedTime, err error) {
	var raw string

	switch tv := x.(type) {
	case string:
		if len(tv) < 15 {
			return gt, mkerr("Invalid ASN.1 GENERALIZED TIME")
		}
		raw = tv
	case time.Time:
		raw = formatGeneralizedTime(tv)
	case GeneralizedTime:
		raw = tv.String()
	default:
		return gt, errorBadTypeForConstructor("GENERALIZED TIME", x)
	}

	var t time.Time
	if t, err = parseGeneralizedTime(raw); err != nil {
		return
	}

	_gt := GeneralizedTime(t)
	if len(constraints) > 0 {
		err = ConstraintGroup(constraints).Constrain(_gt)
	}

	if err == nil {
		gt = _gt
	}

	return
}

func parseCoreGTDateTime(s string) (year, mon, day, hr, min, sec, i int, err error) {
	digit := func(b byte) bool { return '0' <= b && b <= '9' }
	toInt := func(b0, b1 byte) int { return int(b0-'0')*10 + int(b1-'0') }

	if len(s) < 14 {
		err = mkerr("Invalid ASN.1 GENERALIZED TIME")
		return
	}
	for k := 0; k < 14; k++ {
		if !digit(s[k]) {
			err = mkerr("Invalid ASN.1 GENERALIZED TIME")
			return
		}
	}
	year = toInt(s[0], s[1])*100 + toInt(s[2], s[3])
	mon = toInt(s[4], s[5])
	day = toInt(s[6], s[7])
	hr = toInt(s[8], s[9])
	min = toInt(s[10], s[11])
	sec = toInt(s[12], s[13])
	i = 14
	return
}

func parseGTFraction(s string, i int) (nsec, next int, err error) {
	digit := func(b byte) bool { return '0' <= b && b <= '9' }
	next = i
	if next >= len(s) || (s[next] != '.' && s[next] != ',') {
		return
	}
	next++
	start := next
	for next < len(s) && digit(s[next]) {
		next++
	}
	fd := next - start
	if fd == 0 || fd > 6 {
		err = mkerr("Fraction exceeds Generalized Time fractional limit")
		return
	}
	frac := 0
	for j := start; j < next; j++ {
		frac = frac*10 + int(s[j]-'0')
	}
	for ; fd < 6; fd++ {
		frac *= 10
	}
	nsec = frac * 1_000 // µs→ns
	return
}

func parseGTTimezone(s string, i int) (loc *time.Location, next int, err error) {
	digit := func(b byte) bool { return '0' <= b && b <= '9' }
	next = i
	if next >= len(s) {
		err = mkerr("Invalid ASN.1 GENERALIZED TIME")
		return
	}
	switch s[next] {
	case 'Z':
		if next != len(s)-1 {
			err = mkerr("Invalid ASN.1 GENERALIZED TIME")
			return
		}
		loc = time.UTC
		next++
	case '+', '-':
		if next+5 != len(s) {
			err = mkerr("Invalid ASN.1 GENERALIZED TIME")
			return
		}
		for k := 1; k <= 4; k++ {
			if !digit(s[next+k]) {
				err = mkerr("Invalid ASN.1 GENERALIZED TIME")
				return
			}
		}
		toInt := func(b0, b1 byte) int { return int(b0-'0')*10 + int(b1-'0') }
		hh, mm := toInt(s[next+1], s[next+2]), toInt(s[next+3], s[next+4])
		if hh > 23 || mm > 59 {
			err = mkerr("Invalid ASN.1 GENERALIZED TIME")
			return
		}
		off := (hh*60 + mm) * 60
		if s[next] == '-' {
			off = -off
		}
		loc = time.FixedZone("", off)
		next += 5
	default:
		err = mkerr("Invalid ASN.1 GENERALIZED TIME")
	}
	return
}

func parseGeneralizedTime(s string) (time.Time, error) {
	year, mon, day, hr, min, sec, i, err := parseCoreGTDateTime(s)
	if err != nil {
		return time.Time{}, err
	}

	nsec, i, err := parseGTFraction(s, i)
	if err != nil {
		return time.Time{}, err
	}

	var loc *time.Location
	var t time.Time
	if loc, _, err = parseGTTimezone(s, i); err == nil {
		t = time.Date(year, time.Month(mon), day, hr, min, sec, nsec, loc)
	}
	return t, err
}

func formatGeneralizedTime(t time.Time) string {
	var buf [32]byte // 14 base + '.' + 6 frac + 'Z'  → max 22, 32 is safe
	i := 0

	put2 := func(v int) {
		buf[i] = byte('0' + v/10)
		buf[i+1] = byte('0' + v%10)
		i += 2
	}

	year := t.Year()
	buf[i+0] = byte('0' + (year/1000)%10)
	buf[i+1] = byte('0' + (year/100)%10)
	buf[i+2] = byte('0' + (year/10)%10)
	buf[i+3] = byte('0' + year%10)
	i += 4
	put2(int(t.Month()))
	put2(t.Day())
	put2(t.Hour())
	put2(t.Minute())
	put2(t.Second())

	// optional fractional seconds (µs precision)
	nsec := t.Nanosecond()
	if nsec != 0 {
		frac := nsec / 1_000 // to microseconds (max 6 digits)
		buf[i] = '.'
		i++
		start := i
		for p := 100_000; p >= 1; p /= 10 {
			buf[i] = byte('0' + (frac/p)%10)
			i++
		}
		for i > start && buf[i-1] == '0' {
			i--
		}
	}

	buf[i] = 'Z'
	i++

	return string(buf[:i])
}

/*
String returns the string representation of the receiver instance.
*/
func (r GeneralizedTime) String() string { return formatGeneralizedTime(r.Cast()) }

/*
Layout returns the string literal "20060102150405". Note that the
terminating Zulu character (Z) is not included, as it is not used
wherever a UTC offset value is desired (e.g.: -0700).
*/
func (r GeneralizedTime) Layout() string {
	return genTimeLayout
}

/*
Cast unwraps and returns the underlying instance of [time.Time].
*/
func (r GeneralizedTime) Cast() time.Time {
	return time.Time(r)
}

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r GeneralizedTime) IsZero() bool { return r.Cast().IsZero() }

func (r GeneralizedTime) write(pkt Packet, opts *Options) (n int, err error) {
	switch t := pkt.Type(); t {
	case BER, DER:
		wire := []byte(formatGeneralizedTime(r.Cast()))
		tag, class := effectiveTag(r.Tag(), 0, opts)
		off := pkt.Offset()
		if err = writeTLV(pkt, t.newTLV(class, tag, len(wire), false, wire...), opts); err == nil {
			n = pkt.Offset() - off
		}
	default:
		err = errorRuleNotImplemented
	}
	return
}

func (r *GeneralizedTime) read(pkt Packet, tlv TLV, opts *Options) (err error) {
	if pkt == nil {
		return errorNilInput
	}
	switch pkt.Type() {
	case BER, DER:
		var wire []byte
		if wire, err = primitiveCheckRead(r.Tag(), pkt, tlv, opts); err == nil {
			var t time.Time
			if t, err = parseGeneralizedTime(string(wire)); err == nil {
				*r = GeneralizedTime(t)
				pkt.SetOffset(pkt.Offset() + tlv.Length)
			}
		}
	default:
		err = errorRuleNotImplemented
	}
	return
}

/*
Deprecated: UTCTime aliases an instance of [time.Time] to implement the
obsolete ASN.1 UTC TIME (tag 23)

This type is implemented within this package for historical/legacy purposes
and should not be used in modern systems.
*/
type UTCTime time.Time

/*
Tag returns the integer constant [TagUTCTime].
*/
func (r UTCTime) Tag() int { return TagUTCTime }

/*
IsPrimitive returns true, indicating the receiver is a known
ASN.1 primitive.
*/
func (r UTCTime) IsPrimitive() bool { return true }

/*
String returns the string representation of the receiver instance.
*/
func (r UTCTime) String() string { return formatUTCTime(r.Cast()) }

/*
Layout returns the string literal "0601021504". Note that the
terminating Zulu (Z) character is not included, as it is not
used wherever a UTC offset value is desired (e.g.: -0700).
*/
func (r UTCTime) Layout() string { return utcTimeLayout }

/*
Cast unwraps and returns the underlying instance of [time.Time].
*/
func (r UTCTime) Cast() time.Time { return time.Time(r) }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r UTCTime) IsZero() bool { return r.Cast().IsZero() }

/*
Deprecated: UTCTime is intended for historical support only; use [GeneralizedTime]
instead.

NewUTCTime returns an instance of [UTCTime] alongside an error following an attempt
to marshal x.
*/
func NewUTCTime(x any, constraints ...Constraint) (utc UTCTime, err error) {
	var raw string

	switch tv := x.(type) {
	case string:
		raw = tv
	case time.Time:
		raw = formatUTCTime(tv)
	case UTCTime:
		raw = tv.String()
	default:
		err = errorBadTypeForConstructor("UTC TIME", x)
		return
	}

	var t time.Time
	if t, err = parseUTCTime(raw); err != nil {
		return
	}

	_utc := UTCTime(t)
	if len(constraints) > 0 {
		err = ConstraintGroup(constraints).Constrain(_utc)
	}

	if err == nil {
		utc = _utc
	}
	return
}

func utcDigit(b byte) bool     { return '0' <= b && b <= '9' }
func utcToInt(b0, b1 byte) int { return int(b0-'0')*10 + int(b1-'0') }

func parseUTCCore(s string) (yy, mm, dd, hr, mn, sc, next int, err error) {
	// need at least “YYMMDDhhmmZ” → 11 bytes
	if len(s) < 11 {
		err = mkerr("Invalid ASN.1 UTC TIME")
		return
	}

	for k := 0; k < 10; k++ {
		if !utcDigit(s[k]) {
			err = mkerr("Invalid ASN.1 UTC TIME")
			return
		}
	}

	hasSec := utcDigit(s[10])
	if hasSec && (len(s) < 13 || utcDigit(s[12])) {
		err = mkerr("Invalid ASN.1 UTC TIME")
		return
	}
	yy = utcToInt(s[0], s[1])
	mm = utcToInt(s[2], s[3])
	dd = utcToInt(s[4], s[5])
	hr = utcToInt(s[6], s[7])
	mn = utcToInt(s[8], s[9])

	if hasSec {
		sc = utcToInt(s[10], s[11])
		next = 12
		if len(s) < 13 {
			err = mkerr("Invalid ASN.1 UTC TIME")
		}
	} else {
		sc = 0
		next = 10
	}

	return
}

func parseUTCTimezone(s string, idx int) (loc *time.Location, err error) {
	if idx >= len(s) {
		return nil, mkerr("Invalid ASN.1 UTC TIME")
	}

	switch s[idx] {
	case 'Z':
		if idx != len(s)-1 {
			return nil, mkerr("Invalid ASN.1 UTC TIME")
		}
		return time.UTC, nil

	case '+', '-':
		if idx+5 != len(s) {
			return nil, mkerr("Invalid ASN.1 UTC TIME")
		}
		for k := 1; k <= 4; k++ {
			if !utcDigit(s[idx+k]) {
				return nil, mkerr("Invalid ASN.1 UTC TIME")
			}
		}
		hh := utcToInt(s[idx+1], s[idx+2])
		mm := utcToInt(s[idx+3], s[idx+4])
		if hh > 23 || mm > 59 {
			return nil, mkerr("Invalid ASN.1 UTC TIME")
		}
		off := (hh*60 + mm) * 60
		if s[idx] == '-' {
			off = -off
		}
		return time.FixedZone("", off), nil
	default:
		return nil, mkerr("Invalid ASN.1 UTC TIME")
	}
}

func parseUTCTime(s string) (utc time.Time, err error) {
	var yy, mo, dd, hr, mn, sc, i int
	if yy, mo, dd, hr, mn, sc, i, err = parseUTCCore(s); err == nil {
		var loc *time.Location
		if loc, err = parseUTCTimezone(s, i); err == nil {
			// two-digit year mapping (50-99 ⇒ 19xx, 00-49 ⇒ 20xx)
			if yy < 50 {
				yy += 2000
			} else {
				yy += 1900
			}

			utc = time.Date(yy, time.Month(mo), dd, hr, mn, sc, 0, loc)
		}
	}

	return
}

func formatUTCTime(t time.Time) string {
	var b [11]byte // YYMMDDhhmm + 'Z'
	put2 := func(idx, v int) {
		b[idx] = byte('0' + v/10)
		b[idx+1] = byte('0' + v%10)
	}
	yy := t.Year() % 100
	put2(0, yy)
	put2(2, int(t.Month()))
	put2(4, t.Day())
	put2(6, t.Hour())
	put2(8, t.Minute())
	b[10] = 'Z'
	return string(b[:])
}

func chopZulu(raw string) string {
	if len(raw) > 0 && raw[len(raw)-1] == 'Z' {
		raw = raw[:len(raw)-1]
	}

	return raw
}

func (r UTCTime) write(pkt Packet, opts *Options) (n int, err error) {
	switch t := pkt.Type(); t {
	case BER, DER:
		wire := []byte(formatUTCTime(r.Cast()))
		tag, class := effectiveTag(r.Tag(), 0, opts)
		off := pkt.Offset()
		if err = writeTLV(pkt, t.newTLV(class, tag, len(wire), false, wire...), opts); err == nil {
			n = pkt.Offset() - off
		}
	default:
		err = errorRuleNotImplemented
	}
	return
}

func (r *UTCTime) read(pkt Packet, tlv TLV, opts *Options) (err error) {
	if pkt == nil {
		return errorNilInput
	}
	switch pkt.Type() {
	case BER, DER:
		var wire []byte
		if wire, err = primitiveCheckRead(r.Tag(), pkt, tlv, opts); err == nil {
			var t time.Time
			if t, err = parseUTCTime(string(wire)); err == nil {
				*r = UTCTime(t)
				pkt.SetOffset(pkt.Offset() + tlv.Length)
			}
		}
	default:
		err = errorRuleNotImplemented
	}
	return
}
