package api

// Package api is the HTTP boundary: gin routes for submitting a
// download job, polling its status, and reading client-relevant
// configuration. Handlers hold no job logic; they translate between
// request payloads and the job service.
