// Package naming derives output paths for caption jobs and tracks which
// input claimed each output path during a run.
//
// Output names follow three rules:
//
//	no custom name:        <outDir>/<input stem><suffix><input ext>
//	custom name with ext:  <outDir>/<custom>
//	custom name, no ext:   <outDir>/<custom><input ext>
//
// A custom name "has an extension" when a '.' appears after its last '/'.
package naming
