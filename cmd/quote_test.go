package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"isin":"US0378331005","last":170.25,"bid":170.20}`)
	}))
	defer srv.Close()

	got, err := fetchQuote(srv.Client(), srv.URL, "$.last")
	if err != nil {
		t.Fatal(err)
	}
	if got != 170.25 {
		t.Errorf("fetchQuote = %v, want 170.25", got)
	}
}

func TestFetchQuoteListResult(t *testing.T) {
	// a path with a slice selector yields a list of one answer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":{"intraday":{"data":[[1,169.5],[2,170.25]]}}}`)
	}))
	defer srv.Close()

	got, err := fetchQuote(srv.Client(), srv.URL, "$.series.intraday.data[-1:][1]")
	if err != nil {
		t.Fatal(err)
	}
	if got != 170.25 {
		t.Errorf("fetchQuote = %v, want 170.25", got)
	}
}

func TestFetchQuoteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notfound":
			http.NotFound(w, r)
		case "/string":
			fmt.Fprint(w, `{"last":"./."}`)
		default:
			fmt.Fprint(w, `{}`)
		}
	}))
	defer srv.Close()

	if _, err := fetchQuote(srv.Client(), srv.URL+"/notfound", "$.last"); err == nil {
		t.Error("expected error on 404")
	}
	if _, err := fetchQuote(srv.Client(), srv.URL+"/string", "$.last"); err == nil {
		t.Error("expected error on non-numeric price")
	}
}
