package statement

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // statements are read in a fixed zone, even on hosts without a tz database.

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultZone is the zone in which statement dates are printed.
const DefaultZone = "America/Los_Angeles"

// Config is the immutable configuration of a parsing run. It is passed by value to
// every stage of the pipeline and never modified by it.
type Config struct {
	Layout      *Layout        // Layout is the statement revision, nil to detect it from the input.
	Zone        *time.Location // Zone is the zone civil dates are read in.
	Notation    Notation
	Institution Institution
	DedupWindow int // DedupWindow is the number of days a cash payment may follow the dividend it repeats.
	Logger      zerolog.Logger
}

// Institution identifies the statement issuer in exported documents.
type Institution struct {
	Org      string // Org is the OFX signon organisation.
	FID      string // FID is the OFX financial institution id.
	BankID   string // BankID identifies the issuer of the cash reserve account.
	BrokerID string // BrokerID identifies the issuer of the investment accounts.
	Currency string // Currency is the ISO 4217 code of every amount on the statement.
}

// DefaultConfig returns the configuration for Betterment statements.
func DefaultConfig() Config {
	zone, err := time.LoadLocation(DefaultZone)
	if err != nil {
		// tzdata is embedded, this cannot happen.
		panic(err)
	}
	return Config{
		Zone:     zone,
		Notation: Notation{Symbol: "$", Thousands: ","},
		Institution: Institution{
			Org:      "Betterment",
			FID:      "9999",
			BankID:   "BTRMNT",
			BrokerID: "Betterment",
			Currency: "USD",
		},
		DedupWindow: 5,
		Logger:      zerolog.Nop(),
	}
}

// defaults returns a copy of the configuration with the zone and currency set.
func (c Config) defaults() Config {
	if c.Zone == nil {
		c.Zone = time.UTC
	}
	if c.Institution.Currency == "" {
		c.Institution.Currency = "USD"
	}
	return c
}

// resolve returns a copy of the configuration with a layout selected for lines.
func (c Config) resolve(lines []string) Config {
	c = c.defaults()
	if c.Layout == nil {
		c.Layout = DetectLayout(lines)
		c.Logger.Debug().Str("layout", c.Layout.Name).Msg("layout detected")
	}
	return c
}

// Notation describes how amounts are printed: a currency symbol and a thousands separator.
type Notation struct {
	Symbol    string
	Thousands string
}

// Token strips the currency symbol and thousands separators from text.
// "-$1,234.56" becomes "-1234.56".
func (n Notation) Token(text string) Token {
	s := strings.TrimSpace(text)
	if n.Symbol != "" {
		s = strings.ReplaceAll(s, n.Symbol, "")
	}
	if n.Thousands != "" {
		s = strings.ReplaceAll(s, n.Thousands, "")
	}
	return Token(s)
}

// Token is an amount, a share count or a percentage as printed on the statement,
// stripped of its symbol and separators. It keeps the exact printed precision.
type Token string

// Decimal returns the exact value of the token.
func (t Token) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSuffix(string(t), "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", string(t), err)
	}
	return d, nil
}

// Negative reports whether the token is written with a minus sign, even if its value is zero.
func (t Token) Negative() bool { return strings.HasPrefix(string(t), "-") }

// IsZero reports whether the token is empty or its value is zero.
func (t Token) IsZero() bool {
	if t == "" {
		return true
	}
	d, err := t.Decimal()
	return err == nil && d.IsZero()
}

func (t Token) String() string { return string(t) }
