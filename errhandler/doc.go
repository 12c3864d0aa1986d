// Package errhandler is the application-wide sink for reported errors.
//
// Components report failures with Handle; listeners registered with
// AddListener decide what the user sees (the app forces a logout on
// authentication errors and flashes everything else). A panicking listener
// is recovered and logged; the remaining listeners still run.
package errhandler
