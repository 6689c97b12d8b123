// Package bot — "склейка" вокруг procwatch, lcuclient, webapi и builds,
// реализующая компаньона клиента лиги. Бот:
//   - следит за процессом LeagueClientUx и держит wss-сессию к LCU
//     (см. lcuclient.Watch);
//   - после коннекта разово догружает удалённые данные (версия игры,
//     карта чемпионов);
//   - слушает JSON-события; по champ select вытаскивает чемпиона текущего
//     игрока и тянет его руны из выбранных источников;
//   - (опционально) сразу применяет лучшую страницу рун через REST LCU;
//   - по запросу раскладывает item-сборки в каталог игры (ApplyBuilds);
//   - ведёт журнал (источник, текст) для статусной поверхности.
//
// Жизненный цикл:
//   - Создать через New().
//   - (Опционально) UseConfig("conf/champbot.json") — источники, каталог
//     игры, auto-apply рун.
//   - Запустить Start() и остановить Stop().
//
// Пример:
//
//	b := bot.New()
//	_ = b.UseConfig("conf/champbot.json")
//	if err := b.Start(); err != nil { log.Fatal(err) }
//	defer b.Stop()
//	select {} // держим процесс
package bot
