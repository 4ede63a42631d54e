package domain

import "errors"

var (
	// ErrLoadFailure - один из документов каталога не загрузился
	// или не является JSON-массивом.
	ErrLoadFailure = errors.New("не удалось загрузить каталог медиа")

	// ErrMalformedTimestamp - дата не является реальной датой DD/MM/YYYY.
	ErrMalformedTimestamp = errors.New("некорректная дата")

	// ErrMediaNotFound - нет элемента с таким ID или медиафайла с таким ключом.
	ErrMediaNotFound = errors.New("медиа не найдено")

	// ErrModalClosed - действие требует открытого модального окна.
	ErrModalClosed = errors.New("модальное окно закрыто")
)
