// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package websink

import (
	"fmt"
	"mime"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// request is the parsed query of a request.
type request struct {
	scale  int
	stream bool
}

func (s *Sink) parseQuery(values url.Values) (request, error) {
	req := request{scale: s.scale}

	if v := values.Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxScale {
			return request{}, fmt.Errorf("scale must be between 1 and %d, got %q", maxScale, v)
		}
		req.scale = n
	}
	if _, ok := values["stream"]; ok {
		req.stream = true
	}
	return req, nil
}

func (s *Sink) pageChangedLocked() {
	for scale, buf := range s.snapshot {
		//lint:ignore SA6002 buf is []byte and thus pointer-like
		bufferPool.Put(buf)
		delete(s.snapshot, scale)
	}

	for c := range s.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (s *Sink) terminateClientsLocked() {
	for c := range s.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
}

// grabSnapshot returns a copy of the encoded page. The copy must be returned
// to bufferPool.
func (s *Sink) grabSnapshot(scale int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, ok := s.snapshot[scale]
	if !ok {
		var err error
		if encoded, err = encode(s.page, scale); err != nil {
			return nil, err
		}
		s.snapshot[scale] = encoded
	}
	return append(bufferPool.Get().([]byte)[:0], encoded...), nil
}

// ServeHTTP handles GET requests. The "scale" parameter overrides
// Options.Scale; "stream" selects the multipart stream.
func (s *Sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.stream {
		payload, err := s.grabSnapshot(req.scale)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
		//lint:ignore SA6002 payload is []byte and thus pointer-like
		bufferPool.Put(payload)
		return
	}

	s.stream(w, r, req)
}

func (s *Sink) stream(w http.ResponseWriter, r *http.Request, req request) {
	pw := newPartWriter(w)

	w.Header().Set("Content-Type",
		mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
			"boundary": pw.boundary,
		}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", "image/png")
	header.Set("Content-Transfer-Encoding", "binary")

	for {
		payload, err := s.grabSnapshot(req.scale)
		if err != nil {
			return
		}
		err = pw.writePart(header, payload)
		//lint:ignore SA6002 payload is []byte and thus pointer-like
		bufferPool.Put(payload)

		// An error ends the stream silently; there is no way to report it
		// inside an image stream.
		if err != nil {
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}
