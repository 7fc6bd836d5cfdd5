// Package postfix evaluates arithmetic expressions by converting them to
// postfix (reverse Polish) order with the shunting-yard algorithm and running
// the result on a stack.
//
// Expressions contain numbers, variables, the operators + - * / ^, round
// brackets, and calls of functions of one argument like "sqrt(x)". Numbers
// may use a comma as the decimal separator and may begin or end with it, so
// ".5", "3." and "2,5" are all numbers. Whitespace is ignored everywhere.
//
// Precedence is the usual: ^ binds tighter than * and /, which bind tighter
// than + and -. All operators are left-associative, including ^, so "2^3^2"
// is 64. A minus at the start of an expression, after an open bracket, or
// after another operator negates the term that follows it.
//
// The default functions are sin, cos, and tan, which take degrees; atan,
// which returns radians; log10, log2, and sqrt. A Registry holds the
// functions known to the parser and the evaluator, and more can be
// registered before use.
//
// Parsing produces an Expr which can be evaluated many times with different
// variable values held in a Context.
package postfix
