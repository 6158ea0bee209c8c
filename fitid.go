package statement

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// stampFormat prints instants in keys, "2023-01-15 08:00:00+00:00".
const stampFormat = "2006-01-02 15:04:05-07:00"

// none stands for a missing key part.
const none = "None"

// stamp prints a date as a key part.
func stamp(t time.Time) string {
	if t.IsZero() {
		return none
	}
	return t.UTC().Format(stampFormat)
}

// orNone prints a label as a key part.
func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

// fingerprint returns the identifier of a transaction from its natural key: the md5
// hex digest of the concatenated parts. Identifiers stay the same from one run to the
// next, so that a statement imported twice does not duplicate its transactions.
func fingerprint(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

// uidSpace is the namespace of statement transaction UIDs.
var uidSpace = uuid.NewMD5(uuid.NameSpaceURL, []byte("https://www.betterment.com/ofx"))

// TransactionUID returns the OFX transaction UID of a statement message, derived
// from the given key parts.
func TransactionUID(parts ...string) string {
	return uuid.NewMD5(uidSpace, []byte(strings.Join(parts, ""))).String()
}

// UID returns the transaction UID of the bank statement message.
func (b *BankStatement) UID() string { return TransactionUID(stamp(b.Start), stamp(b.End)) }

// UID returns the transaction UID of the investment statement message.
func (s *InvestmentStatement) UID() string { return TransactionUID(stamp(s.End), s.ID) }
