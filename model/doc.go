// Package model holds the chart data model: tempo and speed keyframes, the
// closed set of note variants, and the derived sample records produced by a
// rebuild.
//
// Time is chart-native milliseconds. Angles are degrees.
package model
