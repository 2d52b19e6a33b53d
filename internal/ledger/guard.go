package ledger

import (
	"fmt"

	"donationledger/internal/domain"
)

// AuthorizeWithdraw permits a balance sweep only when caller is the owner.
func AuthorizeWithdraw(caller, owner domain.Address) error {
	if caller != owner {
		return fmt.Errorf("%w: %s is not the owner", domain.ErrUnauthorized, caller)
	}
	return nil
}
