// Package lang implements the nudhi scripting language: a line-oriented
// command interpreter with a dynamically typed variable store.
//
// # Scripts
//
// A script is plain text with one command per line. Blank lines are skipped.
// Each line either starts with a reserved verb or assigns a variable:
//
//	nudhi_say "text"              print text
//	nudhi_say name                print a variable
//	nudhi_ask "prompt" name       read one line of input into name
//	nudhi_read "file" name        read a whole file into name
//	nudhi_write "file" "text"     replace a file's content with text
//	nudhi_write "file" name       replace a file's content with a variable
//	nudhi_do "command"            run a shell command and wait for it
//	nudhi_change_case name upper  convert a text variable (upper or lower)
//	nudhi_die                     stop the script
//	name = value                  assign a variable
//
// Quoted arguments span from the first to the last double quote; there are
// no escapes.
//
// # Values
//
// A variable holds either a 32-bit signed integer or text ([Value]). The
// right-hand side of an assignment becomes an integer when it is a literal
// integer or a valid expression, and text otherwise:
//
//	n = 42          // Int(42)
//	m = n * 2       // Int(84)
//	r = pow 2 10    // Int(1024)
//	s = hello there // Str("hello there")
//	q = "3 + 4"     // Str("3 + 4")
//
// # Expressions
//
// [Evaluate] accepts exactly one operator or function per expression, with
// operands that are literal integers or names of integer variables:
//
//	a + b   a - b   a * b   a / b   a % b   a ^ b
//	pow a b   log a b   sqrt a   ln a   abs a
//
// Division and remainder truncate toward zero; by zero they are fatal.
// Fractional results of sqrt, log and ln are truncated toward zero.
//
// # Errors
//
// Every failure is an [*Error] with a [Class]. Fatal errors stop
// [Interpreter.Run]; all others are reported as one line on the diagnostic
// stream and the script continues with the next line.
package lang
