package pix

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	gui            = "br.gov.bcb.pix"
	maxNameLength  = 25
	maxCityLength  = 15
	maxTxIDLength  = 25
	currencyBRL    = "986"
	countryBrazil  = "BR"
	categoryCode   = "0000"
	formatVersion  = "01"
	singleUseQRPOI = "12"
)

// Merchant identifies who receives a PIX charge.
type Merchant struct {
	Key  string
	Name string
	City string
}

type Charge struct {
	Merchant
	Amount      decimal.Decimal
	TxID        string
	Description string
}

// NewTxID returns a PIX-safe transaction id: an uppercase uuid without dashes, cut to 25 chars.
func NewTxID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:maxTxIDLength]
}

func field(id string, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// ascii strips diacritics ("SÃO" becomes "SAO") and drops whatever is still
// outside ASCII, so EMV length prefixes count characters.
func ascii(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

func clip(s string, max int) string {
	s = strings.ToUpper(strings.TrimSpace(ascii(s)))
	if len(s) > max {
		return s[:max]
	}

	return s
}

// Payload builds the BR Code "copia e cola" string for c, CRC included.
func Payload(c Charge) string {
	account := field("00", gui) + field("01", c.Key)
	if len(c.Description) > 0 {
		account += field("02", ascii(c.Description))
	}

	txid := c.TxID
	if len(txid) == 0 {
		txid = "***"
	}

	var b strings.Builder
	b.WriteString(field("00", formatVersion))
	b.WriteString(field("01", singleUseQRPOI))
	b.WriteString(field("26", account))
	b.WriteString(field("52", categoryCode))
	b.WriteString(field("53", currencyBRL))
	if c.Amount.IsPositive() {
		b.WriteString(field("54", c.Amount.StringFixed(2)))
	}
	b.WriteString(field("58", countryBrazil))
	b.WriteString(field("59", clip(c.Name, maxNameLength)))
	b.WriteString(field("60", clip(c.City, maxCityLength)))
	b.WriteString(field("62", field("05", clip(txid, maxTxIDLength))))
	b.WriteString("6304")

	payload := b.String()

	return payload + fmt.Sprintf("%04X", CRC16(payload))
}

// CRC16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as required by EMV QR codes.
func CRC16(data string) uint16 {
	crc := uint16(0xFFFF)

	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
