package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/flattenmidi/constants"
	"github.com/jsphweid/flattenmidi/flatten"
	"github.com/jsphweid/flattenmidi/model"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves flattening over HTTP",
	Long:  `Serves flattening over HTTP. POST a MIDI file to /flatten and get the flattened file back.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.WithField("addr", serveAddr).Info("serving")
		return http.ListenAndServe(serveAddr, NewHandler())
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &flatten.ConfigError{Err: fmt.Errorf("%v must be an integer, got %q", key, raw)}
	}
	return val, nil
}

func queryBool(r *http.Request, key string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &flatten.ConfigError{Err: fmt.Errorf("%v must be a boolean, got %q", key, raw)}
	}
	return val, nil
}

func optionsFromRequest(r *http.Request) (flatten.Options, error) {
	var opts flatten.Options
	var err error
	if opts.MaxVoices, err = queryInt(r, "max_voices", constants.DefaultMaxVoices); err != nil {
		return opts, err
	}
	if opts.AutoOptimize, err = queryBool(r, "auto_optimize", true); err != nil {
		return opts, err
	}
	if opts.Strict, err = queryBool(r, "strict", false); err != nil {
		return opts, err
	}
	opts.Strategy = r.URL.Query().Get("strategy")
	return opts, nil
}

func statusFor(err error) int {
	var configErr *flatten.ConfigError
	var decodeErr *flatten.DecodeError
	var overflowErr *flatten.OverflowError
	switch {
	case errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &decodeErr), errors.As(err, &overflowErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func HandleFlatten(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromRequest(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes)
	res, err := flatten.FlattenReader(body, "upload", opts)
	if err != nil {
		log.WithError(err).Warn("flatten request failed")
		writeError(w, statusFor(err), err)
		return
	}

	data, err := res.Encode()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "audio/midi")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Summary.RunId+constants.GetOutputSuffix()+".mid"))
	h.Set("X-Run-Id", res.Summary.RunId)
	h.Set("X-Voices", strconv.Itoa(res.Summary.Voices))
	h.Set("X-Dropped-Notes", strconv.Itoa(res.Summary.Dropped))
	h.Set("X-Truncated-Notes", strconv.Itoa(res.Summary.Truncated))
	h.Set("X-Replaced-Notes", strconv.Itoa(res.Summary.Replaced))
	w.Write(data)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/flatten", HandleFlatten).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"X-Run-Id", "X-Voices", "X-Dropped-Notes", "X-Truncated-Notes", "X-Replaced-Notes"},
	}).Handler(router)
}
