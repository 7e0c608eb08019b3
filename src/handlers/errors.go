package handlers

import (
	"errors"
	"net/http"

	"saku-server/src/ledger"
)

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses:
// validation 400, insufficient balance 422, missing reference 404.
func writeLedgerError(w http.ResponseWriter, err error) bool {
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return true
	}
	var balanceErr *ledger.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		http.Error(w, balanceErr.Error(), http.StatusUnprocessableEntity)
		return true
	}
	var notFoundErr *ledger.NotFoundError
	if errors.As(err, &notFoundErr) {
		http.Error(w, notFoundErr.Error(), http.StatusNotFound)
		return true
	}
	return false
}
