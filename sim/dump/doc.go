// Package dump exports probe content: gnuplot-compatible text, rows in a
// SQLite database, and Prometheus textfile exposition of probe aggregates.
package dump
