package runtime

var preludeForms = []string{
	`(define (abs x) (if (< x 0) (- 0 x) x))`,
	`(define (max a b) (if (< a b) b a))`,
	`(define (min a b) (if (< a b) a b))`,
	`(define (length lst)
	   (begin
	     (define (walk rest n)
	       (if (null? rest) n (walk (cdr rest) (+ n 1))))
	     (walk lst 0)))`,
}
