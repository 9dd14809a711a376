package httpkit

import "net/http"

// Get mounts a Call handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a Call handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// Put mounts a Call handler under PUT
func Put(r Router, path string, h func(*http.Request) (any, error)) { r.Put(path, Call(h)) }

// Patch mounts a Call handler under PATCH
func Patch(r Router, path string, h func(*http.Request) (any, error)) { r.Patch(path, Call(h)) }

// Delete mounts a Call handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }
