// Package launchscript reads launcher batch scripts and extracts the profile
// identifier they pass to the emulator, e.g.
//
//	START ..\TeknoParrotUi.exe --profile=WMMT6RR.xml
//
// yields "WMMT6RR".
package launchscript
