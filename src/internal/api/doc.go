// Package api provides the REST API for reading and editing the hosts file.
//
// Endpoints:
//   - GET /api/v1/entries lists active entries, filtered by repeatable
//     host (pattern, `*` allowed) and address query parameters
//   - PUT /api/v1/assignments points hosts at addresses
//   - DELETE /api/v1/assignments disables the entries of hosts
//   - GET /api/v1/hosts/{host}/local reports whether a host points at this machine
//   - GET /api/v1/health checks that the hosts file is readable and writable
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "invalid_request",
//	    "message": "Human-readable error message"
//	  }
//	}
//
// Invalid requests are answered with 400, hosts file I/O failures with 500.
package api
