// Package detail provides single-entity screens that load their data lazily
// when opened and offer inline retry ('r') after a failed load.
package detail
