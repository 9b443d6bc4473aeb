// Package connection talks to a running static server over HTTP(S).
//
// The probe command uses it to wait until a server launched elsewhere
// (for example by a test harness) answers requests.
package connection
