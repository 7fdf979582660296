package repository

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isNotFound reports whether err is the store's "no such document" signal,
// as opposed to a real backend failure.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// conversationDocID derives the deterministic document id that enforces the
// one-conversation-per-(buyer, seller, product) constraint.
func conversationDocID(buyerID, sellerID, productID string) string {
	return fmt.Sprintf("%s_%s_%s", buyerID, sellerID, productID)
}
