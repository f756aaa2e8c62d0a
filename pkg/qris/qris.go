package qris

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrMalformedTemplate = errors.New("qris template has no amount or country code field")
	ErrInvalidAmount     = errors.New("invalid amount or unique fee")
)

const (
	tagAmount      = "54"
	tagCountryCode = "58"
	tagCRC         = "63"

	// Fee range that keeps every transaction total unique. Zero is excluded
	// so a paid total can never collide with a bare transfer of the base amount.
	MinUniqueFee = 1
	MaxUniqueFee = 999

	DefaultExpiryMinutes = 30

	ExpiredLabel = "Kadaluarsa"
)

type IQris interface {
	BuildDynamicPayload(amount float64, uniqueFee int) (string, error)
	GenerateUniqueFee() int
	Template() string
}

type codec struct {
	template string
	randInt  func(n int) int
}

type Option func(*codec)

// WithRandSource replaces the fee randomness, mainly so tests can pin fees.
func WithRandSource(src rand.Source) Option {
	return func(c *codec) {
		r := rand.New(src)
		c.randInt = r.Intn
	}
}

func New(template string, opts ...Option) IQris {
	c := &codec{
		template: template,
		randInt:  rand.Intn,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *codec) Template() string {
	return c.template
}

func (c *codec) BuildDynamicPayload(amount float64, uniqueFee int) (string, error) {
	return BuildDynamicPayload(c.template, amount, uniqueFee)
}

func (c *codec) GenerateUniqueFee() int {
	return c.randInt(MaxUniqueFee) + MinUniqueFee
}

type field struct {
	tag   string
	value string
}

// BuildDynamicPayload injects the transaction amount (base price plus unique
// fee) into field 54 of a static QRIS template and re-signs the payload with
// a fresh CRC. The template is walked as tag-length-value fields rather than
// pattern-matched, so a "54" digit run inside another field's value (the
// merchant category code 5411, for one) can never be mistaken for the amount.
func BuildDynamicPayload(template string, amount float64, uniqueFee int) (string, error) {
	if amount < 0 || uniqueFee < MinUniqueFee || uniqueFee > MaxUniqueFee {
		return "", ErrInvalidAmount
	}

	fields, err := parseFields(template)
	if err != nil {
		return "", err
	}

	total := amount + float64(uniqueFee)
	amountValue := fmt.Sprintf("%.2f", total)
	if len(amountValue) > 99 {
		return "", ErrInvalidAmount
	}

	amountIdx, countryIdx := -1, -1
	for i, f := range fields {
		switch f.tag {
		case tagAmount:
			amountIdx = i
		case tagCountryCode:
			countryIdx = i
		}
	}

	switch {
	case amountIdx >= 0:
		fields[amountIdx].value = amountValue
	case countryIdx >= 0:
		inserted := make([]field, 0, len(fields)+1)
		inserted = append(inserted, fields[:countryIdx]...)
		inserted = append(inserted, field{tag: tagAmount, value: amountValue})
		inserted = append(inserted, fields[countryIdx:]...)
		fields = inserted
	default:
		return "", ErrMalformedTemplate
	}

	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(formatField(f.tag, f.value))
	}
	sb.WriteString(tagCRC)
	sb.WriteString("04")

	payload := sb.String()
	return payload + Checksum(payload), nil
}

// parseFields walks the top-level TLV sequence. The trailing CRC field (tag
// 63) covers the original static content and is dropped here; the builder
// appends its replacement after the amount is injected.
func parseFields(payload string) ([]field, error) {
	var fields []field

	for pos := 0; pos < len(payload); {
		if pos+4 > len(payload) {
			return nil, ErrMalformedTemplate
		}

		tag := payload[pos : pos+2]
		length, err := parseLength(payload[pos+2 : pos+4])
		if err != nil {
			return nil, err
		}

		end := pos + 4 + length
		if end > len(payload) {
			return nil, ErrMalformedTemplate
		}

		if tag == tagCRC {
			break
		}

		fields = append(fields, field{tag: tag, value: payload[pos+4 : end]})
		pos = end
	}

	if len(fields) == 0 {
		return nil, ErrMalformedTemplate
	}

	return fields, nil
}

func parseLength(s string) (int, error) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, ErrMalformedTemplate
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

func formatField(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// Checksum is the CRC-16 variant mandated by the QRIS spec: init 0xFFFF,
// reflected polynomial 0x8408, complemented and byte-swapped, rendered as
// four uppercase hex digits. Other CRC-16 flavours produce payloads wallet
// apps reject.
func Checksum(payload string) string {
	crc := 0xFFFF

	for i := 0; i < len(payload); i++ {
		crc ^= int(payload[i])
		for bit := 0; bit < 8; bit++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}

	crc = ^crc & 0xFFFF
	crc = ((crc & 0xFF) << 8) | ((crc >> 8) & 0xFF)

	return fmt.Sprintf("%04X", crc)
}

func ExpiryTimestamp(windowMinutes int) time.Time {
	if windowMinutes <= 0 {
		windowMinutes = DefaultExpiryMinutes
	}
	return time.Now().Add(time.Duration(windowMinutes) * time.Minute)
}

// FormatRemaining renders the time left until expiry as "M:SS" with unbounded
// minutes, or the expired label once the deadline has passed.
func FormatRemaining(expiry, now time.Time) string {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return ExpiredLabel
	}

	seconds := int(diff.Seconds())
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
