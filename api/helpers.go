package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/enclavegrants/grantledger/crypto/ethereum"
	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/types"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	n, err := w.Write(jdata)
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
	log.Debugw("api response", "bytes", n, "data", strings.ReplaceAll(string(jdata), "\"", ""))
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// signedBody decodes a signed request from the body, recovers the caller's
// address from the signature over the raw payload bytes, and unmarshals the
// payload into dst. On failure it writes the appropriate API error and
// returns false.
func signedBody(w http.ResponseWriter, r *http.Request, dst any) (common.Address, bool) {
	req := &SignedRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return common.Address{}, false
	}
	caller, err := ethereum.AddrFromSignature(req.Payload, req.Signature)
	if err != nil {
		ErrInvalidSignature.Withf("could not recover caller address: %v", err).Write(w)
		return common.Address{}, false
	}
	if dst != nil {
		if err := json.Unmarshal(req.Payload, dst); err != nil {
			ErrMalformedBody.Withf("could not decode payload: %v", err).Write(w)
			return common.Address{}, false
		}
	}
	return caller, true
}

// urlParamBatch parses the batch id URL parameter.
func urlParamBatch(w http.ResponseWriter, r *http.Request) (types.BatchID, bool) {
	raw := chi.URLParam(r, BatchURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ErrMalformedParam.Withf("invalid batch id %q", raw).Write(w)
		return 0, false
	}
	return types.BatchID(id), true
}

// urlParamAddress parses an address URL parameter.
func urlParamAddress(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	raw := chi.URLParam(r, name)
	if !common.IsHexAddress(raw) {
		ErrMalformedParam.Withf("invalid address %q", raw).Write(w)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}
