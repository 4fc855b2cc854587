package cache

import "fmt"

type Prefix string

const (
	// SentMessages keys the per-SID sent-at mirror.
	SentMessages Prefix = "sent_messages"

	// VerifiedNumbers keys the warm snapshot of the verified-number set.
	VerifiedNumbers Prefix = "verified_numbers"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
