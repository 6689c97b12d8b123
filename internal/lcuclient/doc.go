// Package lcuclient реализует клиента локального API клиента League of
// Legends (LCU). Клиент держит wss-сессию к loopback-эндпоинту, который
// клиент лиги поднимает на случайном порту со случайным паролем (и порт, и
// пароль достаются из командной строки процесса, см. пакет procwatch),
// подписывается на поток JSON-событий и отдаёт сырые фреймы наружу через
// колбэк OnEvent.
//
// Состояние (LcuClient):
//   - authURL вида "riot:<token>@127.0.0.1:<port>"; пустая строка — сессии
//     не было либо клиент лиги не запущен;
//   - conn — живой сокет; публикуется сразу после апгрейда, сбрасывается
//     Close()-ом или смертью read-цикла.
//
// Переходы:
//   - UpdateAuthURL — true только при фактической смене url (фильтр
//     реконнект-дребезга);
//   - SetRunning — флаг без побочных эффектов;
//   - Close — идемпотентное best-effort закрытие, сбрасывает и authURL;
//   - Connect — wss-апгрейд с Basic-заголовком, бесконечный retry раз в 2s,
//     проверка сертификата отключена (self-signed на loopback); после
//     апгрейда — подписка `[5, "OnJsonApiEvent"]` и блокирующий read-цикл.
//
// Watch — supervisor: раз в 5s procwatch приносит сэмпл (url, running);
// пропал процесс — Close и ждём; сменился url — Connect; тот же url — no-op.
//
// События (колбэки поля структуры):
//   - OnConnecting, OnConnected, OnEvent, OnDisconnected, OnError.
//
// Поверх тех же кредов есть REST-хелперы (https к тому же порту):
// CurrentSummoner, CurrentChampion, ListRunePages, ApplyRunePage и др. —
// ими бот применяет страницы рун.
//
// Пример:
//
//	lc := lcuclient.New()
//	lc.OnConnected = func() { fmt.Println("connected") }
//	lc.OnEvent = func(raw []byte) { fmt.Println(len(raw)) }
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	lc.Watch(ctx, procwatch.Start(ctx)) // блокируется до отмены ctx
package lcuclient
